// Package events defines the typed session event contract.
//
// The protocol core never renders anything; it emits these events and
// leaves presentation to subscribers. Event kinds are grouped by
// receiver-facing namespaces:
//
//   - session.*
//   - user_input.*
//   - assistant_response.*
//   - assistant_playback.*
//   - turn_state.*
//   - conversation.*
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in stream order.
//   - Final: terminal immutable text for the current stream.
//   - Fragment: one chunk of synthesized speech belonging to a turn.
//
// session events
//
//   - StatusChanged (session.status_changed): connectivity toggled.
//   - ErrorRaised (session.error_raised): most recent user-visible
//     error, scoped to a transport op, a frame, a fragment, or a turn.
//   - ErrorCleared (session.error_cleared): the surfaced error was
//     dismissed or superseded by a reconnect.
//
// user_input events
//
//   - RecordingStarted (user_input.recording_started): capture active.
//   - RecordingStopped (user_input.recording_stopped): capture
//     finalized and handed to the outbound path.
//   - UserTranscriptFinal (user_input.transcript_final): remote
//     transcription of the uploaded utterance.
//
// assistant_response events
//
//   - AssistantResponseStarted (assistant_response.started): response
//     generation started, text buffer opened.
//   - AssistantResponseSegment (assistant_response.segment): streamed
//     response text segment, visible before the next is applied.
//   - AssistantResponseFinal (assistant_response.final): response text
//     stream complete; the turn may still be synthesizing.
//
// assistant_playback events
//
//   - AssistantPlaybackStarted (assistant_playback.started): queue
//     left idle and began playing fragments.
//   - AssistantPlaybackFragmentPlayed (assistant_playback.fragment_played):
//     one fragment finished playing.
//   - AssistantPlaybackFragmentSkipped (assistant_playback.fragment_skipped):
//     fragment failed to play; the queue advanced past it.
//   - AssistantPlaybackEnded (assistant_playback.ended): the last
//     fragment of the turn finished.
//
// turn_state events
//
//   - TurnStarted (turn_state.started)
//   - TurnCompleted (turn_state.completed)
//   - TurnAborted (turn_state.aborted): remote error ended the turn
//     without completing it.
//
// conversation events
//
//   - MessageAppended (conversation.message_appended): the in-memory
//     message log grew.
//   - HistoryReplaced (conversation.history_replaced): the wire
//     history snapshot was replaced by a terminal frame.
package events
